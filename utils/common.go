package utils

import (
	"regexp"
	"unicode"
)

// StringLimit 限制字符串长度，若超出limit，返回前limit个码点+"..."
func StringLimit(s string, limit int) string {
	runeSlice := []rune(s)
	if len(runeSlice) <= limit {
		return s
	}
	return string(runeSlice[:limit]) + "..."
}

// MergeStringSlices 合并多个字符串切片并去重、去除空字符串
func MergeStringSlices(slices ...[]string) (res []string) {
	set := make(map[string]struct{})
	for _, slice := range slices {
		for _, s := range slice {
			if len(s) == 0 {
				continue
			}
			if _, ok := set[s]; ok {
				continue
			}
			set[s] = struct{}{}
			res = append(res, s)
		}
	}
	return
}

// DeleteStringInSlice 删除字符串切片中的str元素，并去重
func DeleteStringInSlice(slice []string, str ...string) []string {
	slice = MergeStringSlices(slice)
	for _, s := range MergeStringSlices(str) {
		for i, now := range slice {
			if now == s {
				slice = append(slice[:i], slice[i+1:]...)
				break
			}
		}
	}
	return slice
}

var numberReg = regexp.MustCompile(`^\d+$`)

// IsNumber 字符串是否为纯数字
func IsNumber(s string) bool {
	return numberReg.MatchString(s)
}

// SplitOnSpace 按文字、空格、文字...分隔字符串
func SplitOnSpace(x string) []string {
	var result []string
	pi := 0
	ps := false
	for i, c := range x {
		s := unicode.IsSpace(c)
		if s != ps && i > 0 {
			result = append(result, x[pi:i])
			pi = i
		}
		ps = s
	}
	result = append(result, x[pi:])
	return result
}
