// Package validation 注册gin使用的自定义校验规则
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var (
	once    sync.Once
	initErr error
)

// Register 注册到gin的默认校验器,可重复调用
// 1. notblank:去掉空白后不能为空
// 2. decimal.Decimal按float64参与gt/lt等比较
// 3. 错误信息中使用json字段名
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin校验器不是validator/v10")
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			initErr = err
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterTagNameFunc(jsonName)
	})
	return initErr
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
