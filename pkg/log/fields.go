package log

import (
	"go.uber.org/zap"
)

const (
	FieldNameModule    = "module"
	FieldNameComponent = "component"
)

// FieldModule 返回一个包含模块名的 zap 字段。
func FieldModule(module string) zap.Field {
	return zap.String(FieldNameModule, module)
}

// FieldComponent 返回一个包含组件名的 zap 字段。
func FieldComponent(component string) zap.Field {
	return zap.String(FieldNameComponent, component)
}

// FieldPath 返回一个包含文件路径的 zap 字段。
func FieldPath(path string) zap.Field {
	return zap.String("path", path)
}

// FieldOffset 返回一个包含流内偏移量的 zap 字段。
func FieldOffset(offset int64) zap.Field {
	return zap.Int64("offset", offset)
}

// FieldRecordSize 返回一个包含记录大小（字节）的 zap 字段。
func FieldRecordSize(size uint32) zap.Field {
	return zap.Uint32("record_size", size)
}
