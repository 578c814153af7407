// Package fixtures creates populated test entities and attribute maps for
// ctrlspec specs.
package fixtures

import (
	"math/rand"
	"reflect"
	"time"

	"github.com/Pallinder/go-randomdata"
)

// New returns a pointer to an entity with every settable field populated with
// random data. Fields tagged `ext:"id"` are left zero, so the entity behaves
// like one that was never persisted.
func New[ENT any]() *ENT {
	ptr := new(ENT)
	populate(reflect.ValueOf(ptr).Elem())
	return ptr
}

// Collection returns n freshly populated entities.
func Collection[ENT any](n int) []ENT {
	collection := make([]ENT, 0, n)
	for i := 0; i < n; i++ {
		collection = append(collection, *New[ENT]())
	}
	return collection
}

func populate(rv reflect.Value) {
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		switch rt.Field(i).Tag.Get("ext") {
		case "id", "ID":
			continue
		}
		if v := newValue(field); v.IsValid() {
			field.Set(v)
		}
	}
}

func newValue(field reflect.Value) reflect.Value {
	switch field.Type().Kind() {
	case reflect.String:
		return reflect.ValueOf(randomdata.SillyName()).Convert(field.Type())
	case reflect.Bool:
		return reflect.ValueOf(randomdata.Boolean())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if _, ok := field.Interface().(time.Duration); ok {
			return reflect.ValueOf(time.Duration(rand.Int63()))
		}
		v := reflect.New(field.Type()).Elem()
		v.SetInt(int64(rand.Int31()))
		return v
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := reflect.New(field.Type()).Elem()
		v.SetUint(uint64(rand.Uint32()))
		return v
	case reflect.Float32, reflect.Float64:
		v := reflect.New(field.Type()).Elem()
		v.SetFloat(rand.Float64())
		return v
	case reflect.Struct:
		if _, ok := field.Interface().(time.Time); ok {
			return reflect.ValueOf(time.Now().UTC().Add(time.Duration(rand.Intn(8760)) * time.Hour))
		}
		v := reflect.New(field.Type()).Elem()
		populate(v)
		return v
	case reflect.Ptr:
		v := reflect.New(field.Type().Elem())
		populate(v.Elem())
		return v
	default:
		return reflect.Value{}
	}
}
