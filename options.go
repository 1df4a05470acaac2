package oceanheat

import (
	"fmt"

	"github.com/aouyang1/go-oceanheat/csvseries"
	"github.com/aouyang1/go-oceanheat/impact"
)

// Options configures parsing of the raw data and the impact calculations.
type Options struct {
	CSVOptions    *csvseries.Options
	ImpactOptions *impact.Options
}

func NewDefaultOptions() *Options {
	return &Options{
		CSVOptions:    csvseries.NewDefaultOptions(),
		ImpactOptions: impact.NewDefaultOptions(),
	}
}

// Validate fills in defaults for any unset section and validates the impact options.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	if o.CSVOptions == nil {
		o.CSVOptions = csvseries.NewDefaultOptions()
	}
	impactOpt, err := o.ImpactOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer options, %w", err)
	}
	o.ImpactOptions = impactOpt
	return o, nil
}
