package logging

import (
	"go.uber.org/zap"

	"code.openvenue.io/engine/libs/num"
	"code.openvenue.io/engine/types"
)

// Field is an alias to the zap structured logging field.
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Error(err error) Field {
	return zap.Error(err)
}

func Decimal(key string, d num.Decimal) Field {
	return zap.String(key, d.String())
}

func Order(o *types.Order) Field {
	return zap.Stringer("order", o)
}

func Trade(t *types.Trade) Field {
	return zap.Stringer("trade", t)
}
