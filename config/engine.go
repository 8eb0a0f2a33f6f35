package config

import (
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"aesthetic/direction"
	"aesthetic/format"
	"aesthetic/prefix"
	"aesthetic/sheet"
	"aesthetic/style"
)

// UnitFunc returns unit resolver for numeric values: per property unit from
// configuration, engine unit otherwise.
func (conf *EngineConfig) UnitFunc() format.UnitFunc {
	return func(property string) string {
		if u, ok := conf.Units[property]; ok {
			return u
		}
		return conf.Unit
	}
}

// ClassName returns class name prefix safe to be used in selectors.
func (conf *EngineConfig) ClassName() string {
	if len(conf.ClassPrefix) == 0 {
		return ""
	}
	s := slug.Make(conf.ClassPrefix)
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		// class names may not start with a digit
		s = "_" + s
	}
	return s
}

// Prepare returns engine configured according to the engine section,
// rendering into transient sheets. Additional options are applied last.
func (conf *EngineConfig) Prepare(log *zap.Logger, opts ...style.Option) *style.Engine {
	sink := sheet.NewTransientManager(conf.MediaOrder, log)
	return style.New(sink, log, append([]style.Option{
		style.WithConverter(direction.New()),
		style.WithPrefixer(prefix.New()),
		style.WithUnit(conf.UnitFunc()),
		style.WithDirection(conf.Direction),
		style.WithDeterministic(conf.Deterministic),
		style.WithVendorPrefixes(conf.VendorPrefixes),
		style.WithClassPrefix(conf.ClassName()),
	}, opts...)...)
}
