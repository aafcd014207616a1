package gen

import (
	"fmt"
	"reflect"
)

// Returns the value of a struct field, or of a method without parameters, by name
func member(name string, object reflect.Value) (any, error) {
	for object.Kind() == reflect.Pointer || object.Kind() == reflect.Interface {
		object = object.Elem()
	}

	if object.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%v is not a struct, cannot reference member '%v'", object.Type(), name)
	}

	if field := object.FieldByName(name); field.IsValid() {
		return field.Interface(), nil
	}

	if method := object.MethodByName(name); method.IsValid() && method.Type().NumIn() == 0 {
		return method.Call(nil)[0].Interface(), nil
	}

	if object.CanAddr() {
		if method := object.Addr().MethodByName(name); method.IsValid() && method.Type().NumIn() == 0 {
			return method.Call(nil)[0].Interface(), nil
		}
	}

	return nil, fmt.Errorf("%v has no member named '%v'", object.Type(), name)
}

// Collects a member of every item of a slice
func pluck(name string, items any) ([]any, error) {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected array, got %v", v.Kind())
	}

	result := make([]any, v.Len())

	for i := range result {
		value, err := member(name, v.Index(i))
		if err != nil {
			return nil, err
		}

		result[i] = value
	}

	return result, nil
}
