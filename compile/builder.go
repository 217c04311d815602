package compile

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"twc/config"
	"twc/css"
	"twc/tailwind"
)

// newBuilder creates builder with registries extended from configuration.
// Custom preflight is checked by the stylesheet parser, problems are only
// reported since browsers skip what they do not understand.
func newBuilder(conf *config.CompilerConfig, log *zap.Logger) (*tailwind.Builder, error) {
	b := tailwind.New(log)
	b.SetMergeConflicts(conf.MergeConflicts)

	for _, name := range slices.Sorted(maps.Keys(conf.Breakpoints)) {
		b.AddBreakpoint(name, conf.Breakpoints[name])
	}
	for _, name := range slices.Sorted(maps.Keys(conf.Palette)) {
		b.AddColor(name, tailwind.Palette(conf.Palette[name]))
	}
	for _, name := range slices.Sorted(maps.Keys(conf.Fonts.Families)) {
		b.AddFontFamily(name, conf.Fonts.Families[name])
	}
	for _, name := range slices.Sorted(maps.Keys(conf.Fonts.Sizes)) {
		size := conf.Fonts.Sizes[name]
		b.AddFontSize(name, tailwind.FontSize{Size: size.Size, Height: size.Height})
	}

	b.DisablePreflight(conf.Preflight.Disable)
	if conf.Preflight.Disable {
		return b, nil
	}
	custom, err := conf.Preflight.ReadPreflight()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare preflight: %w", err)
	}
	if custom == "" {
		return b, nil
	}
	sheet := css.NewParser(log).Parse([]byte(custom), "custom preflight")
	for _, w := range sheet.Warnings {
		log.Warn("Custom preflight problem", zap.String("problem", w))
	}
	b.AddPreflight(custom)
	return b, nil
}
