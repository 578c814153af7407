package mvc

import (
	"errors"
	"reflect"
)

// ErrIDFieldNotFound is returned when an entity carries no identifier field.
var ErrIDFieldNotFound = errors.New("mvc: entity has no ID field")

// LookupID returns the identifier of the given entity.
// The identifier is the field named ID, or any string field tagged `ext:"id"`.
func LookupID(ent any) (string, bool) {
	field, ok := idField(reflect.ValueOf(ent))
	if !ok || field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}

// SetID writes the identifier of the entity behind the given pointer.
func SetID(ptr any, id string) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr {
		return errors.New("mvc: SetID expects a pointer to an entity")
	}
	field, ok := idField(rv)
	if !ok || !field.CanSet() || field.Kind() != reflect.String {
		return ErrIDFieldNotFound
	}
	field.SetString(id)
	return nil
}

func idField(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		switch rt.Field(i).Tag.Get("ext") {
		case "id", "ID":
			return rv.Field(i), true
		}
	}
	if field := rv.FieldByName("ID"); field.IsValid() {
		return field, true
	}
	return reflect.Value{}, false
}
