package utils

import (
	"reflect"
	"runtime"
	"strings"
)

// IsSameFunc 判断两个函数是否为同一函数
func IsSameFunc(fnL, fnR interface{}) bool {
	return reflect.ValueOf(fnL).Pointer() == reflect.ValueOf(fnR).Pointer()
}

// CallerPackageName 沿调用栈向上查找首个不属于skipPkgName包的调用方，返回其包名
// 插件注册时以此推导插件Key
func CallerPackageName(skipPkgName string) string {
	for i := 2; ; i++ {
		pc, _, _, ok := runtime.Caller(i)
		if !ok {
			return ""
		}
		name := pkgNameOfFunc(runtime.FuncForPC(pc).Name())
		if name != skipPkgName {
			return name
		}
	}
}

// GetPkgNameByFunc 返回指定函数所属的包名
func GetPkgNameByFunc(fn interface{}) string {
	return pkgNameOfFunc(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
}

func pkgNameOfFunc(fnName string) string {
	if idx := strings.LastIndex(fnName, "/"); idx >= 0 {
		fnName = fnName[idx+1:]
	}
	return strings.SplitN(fnName, ".", 2)[0]
}
