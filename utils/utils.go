package utils

import (
	"reflect"
	"runtime"
	"strings"
)

// FuncName returns the unqualified name of fn, or "" if fn is not a function.
// Method values lose the "-fm" suffix the runtime gives them.
func FuncName(fn interface{}) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	return name[strings.LastIndex(name, ".")+1:]
}
