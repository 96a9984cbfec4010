package grid

import (
	"testing"

	errs "github.com/matzehuels/gridcompose/pkg/errors"
)

func TestSizeSpecResolve(t *testing.T) {
	tests := []struct {
		name string
		spec SizeSpec
		axis Axis
		cw   float64
		want float64
	}{
		{"fixed width", Fixed(42), AxisWidth, 300, 42},
		{"fixed height", Fixed(80), AxisHeight, 300, 80},
		{"estimated default", Estimated(), AxisHeight, 300, DefaultEstimate},
		{"estimated hint", EstimatedHint(37), AxisHeight, 300, 37},
		{"estimated zero hint", EstimatedHint(0), AxisWidth, 300, 0},
		{"fit width", Fit(), AxisWidth, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Resolve(tt.axis, tt.cw); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizeSpecResolveFitHeightPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Resolve(fit, height) did not panic")
		}
	}()
	Fit().Resolve(AxisHeight, 100)
}

func TestSizeValidate(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		wantErr bool
	}{
		{"fixed", NewSize(Fixed(10), Fixed(20)), false},
		{"fit width", NewSize(Fit(), Estimated()), false},
		{"fit height", NewSize(Fixed(10), Fit()), true},
		{"negative width", NewSize(Fixed(-1), Fixed(20)), true},
		{"negative hint", NewSize(Fixed(1), EstimatedHint(-5)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.size.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidSize) {
				t.Errorf("Validate() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidSize)
			}
		})
	}
}

func TestParseSizeSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    SizeSpec
		wantErr bool
	}{
		{in: "fit", want: Fit()},
		{in: " FIT ", want: Fit()},
		{in: "120", want: Fixed(120)},
		{in: "12.5", want: Fixed(12.5)},
		{in: "est", want: Estimated()},
		{in: "est:44", want: EstimatedHint(44)},
		{in: "", wantErr: true},
		{in: "wide", wantErr: true},
		{in: "est:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSizeSpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSizeSpec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSizeSpec(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSizeSpecStringRoundTrip(t *testing.T) {
	for _, s := range []SizeSpec{Fit(), Fixed(60), Fixed(0.5), Estimated(), EstimatedHint(90)} {
		got, err := ParseSizeSpec(s.String())
		if err != nil {
			t.Fatalf("ParseSizeSpec(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip %q = %+v, want %+v", s.String(), got, s)
		}
	}
}
