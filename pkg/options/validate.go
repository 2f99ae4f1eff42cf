package options

import litedberrors "github.com/iamNilotpal/litedb/pkg/errors"

// Validate checks o against the constraints Open requires before
// proceeding.
func (o *Options) Validate() error {
	if o.DataDir == "" {
		return litedberrors.NewRequiredFieldError("DataDir")
	}
	if o.SegmentCap <= 0 {
		return litedberrors.NewFieldRangeError("SegmentCap", o.SegmentCap, 1, nil)
	}
	if o.MergeRatio < 0 || o.MergeRatio > 1 {
		return litedberrors.NewFieldRangeError("MergeRatio", o.MergeRatio, 0, 1)
	}
	return nil
}
