// Package errors provides coded errors for strain-screen.
//
// Every layer returns *Error values (or wraps them) so the web layer can
// decide what to show without string matching:
//
//	err := errors.NotFoundf("strain %s not found", id)
//	err := errors.DataLoss("effects payload missing medical list").
//	    WithMeta("strain_id", id)
//
// Wrapping keeps the original code:
//
//	if err != nil {
//	    return nil, errors.Wrapf(err, "failed to load strain %s", id)
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) { ... }
//	code := errors.GetCode(err)
//	msg := errors.GetMessage(err)
//
// Config validation goes through the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("BaseURL", cfg.BaseURL, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer guidelines
//
// Client layer: map transport and upstream HTTP failures to Unavailable,
// NotFound, DeadlineExceeded, Canceled or DataLoss.
//
// Orchestrator layer: validate inputs (InvalidArgument) and wrap client
// and repository errors with the strain id.
//
// Handler layer: render the code through Code.HTTPStatus for the JSON API,
// or as a failed screen for HTML pages. Log internal errors.
package errors
