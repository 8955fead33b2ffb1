package filter

import (
	"fmt"
	"reflect"
)

// Accessor 从条目中取值：按字段名（反射，仅配置时解析一次）或自定义函数
type Accessor[T any, V any] struct {
	field string
	fn    func(T) V
}

// Field 按结构体字段名取值
func Field[T any, V any](name string) Accessor[T, V] {
	return Accessor[T, V]{field: name}
}

// Extract 按自定义函数取值
func Extract[T any, V any](fn func(T) V) Accessor[T, V] {
	return Accessor[T, V]{fn: fn}
}

func (a Accessor[T, V]) isZero() bool {
	return a.field == "" && a.fn == nil
}

// resolve 把访问器解析成纯函数。字段名在这里解析一次，之后的每次过滤不再走反射查找。
func (a Accessor[T, V]) resolve() (func(T) V, error) {
	if a.fn != nil {
		return a.fn, nil
	}
	if a.field == "" {
		return nil, nil
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("filter: field accessor %q requires a struct item type, got %s", a.field, t.Kind())
	}

	sf, ok := t.FieldByName(a.field)
	if !ok {
		return nil, fmt.Errorf("filter: item type %s has no field %q", t.Name(), a.field)
	}

	vt := reflect.TypeOf((*V)(nil)).Elem()
	convertible := sf.Type.ConvertibleTo(vt)
	// 数值类型到 string 的 Convert 是码点转换而非格式化，属配置错误
	if vt.Kind() == reflect.String && sf.Type.Kind() != reflect.String {
		convertible = false
	}
	if !sf.Type.AssignableTo(vt) && !convertible {
		return nil, fmt.Errorf("filter: field %s.%s is %s, not assignable to %s", t.Name(), a.field, sf.Type, vt)
	}

	index := sf.Index
	return func(item T) V {
		v := reflect.ValueOf(item)
		for v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		fv := v.FieldByIndex(index)
		if fv.Type() != vt {
			fv = fv.Convert(vt)
		}
		return fv.Interface().(V)
	}, nil
}
