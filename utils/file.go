package utils

import (
	"os"
	"path/filepath"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// PathJoin 路径拼接
func PathJoin(elem ...string) string {
	return filepath.Join(elem...)
}

// MakeDir 创建文件夹（连同父目录）
func MakeDir(path string) (string, error) {
	return MakeDirWithMode(path, 0o755)
}

// MakeDirWithMode 以指定权限创建文件夹
func MakeDirWithMode(path string, mode os.FileMode) (string, error) {
	if FileExists(path) {
		return path, nil
	}
	return path, os.MkdirAll(path, mode)
}
