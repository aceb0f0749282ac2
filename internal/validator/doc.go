// Package validator holds the issue and report types behind fmf check.
//
// A [Result] collects [Issue] values, each ranked by [Severity]. Only errors
// fail a check; warnings and notes are reported but do not change the exit
// status. A [Reporter] renders a Result either as grouped, colored text or
// as a JSON document with per-severity counts:
//
//	res := &validator.Result{}
//	if _, err := fmf.ReadBlock(path); err != nil {
//		res.AddError(path, err.Error(), nil)
//	}
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(res)
package validator
