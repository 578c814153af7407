package fixtures

import (
	"reflect"

	"go.llib.dev/ctrlspec/mvc"
)

// Attrs derives an attribute map from the exported fields of an entity,
// excluding its identifier field. The result is what a form submission for
// the entity would look like as request parameters.
func Attrs(ent any) mvc.Attrs {
	rv := reflect.ValueOf(ent)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	attrs := mvc.Attrs{}
	if rv.Kind() != reflect.Struct {
		return attrs
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		switch field.Tag.Get("ext") {
		case "id", "ID":
			continue
		}
		attrs[field.Name] = rv.Field(i).Interface()
	}
	return attrs
}

// Params derives submitted request parameters from an entity,
// which is the same mapping Attrs produces.
func Params(ent any) mvc.Params {
	return mvc.Params(Attrs(ent))
}
