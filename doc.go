// Package formbuilder extracts, transforms, and validates multipart form submissions.
//
// Quick Start:
//
//	form := formbuilder.NewForm().
//	    Append("title", "Hello World").
//	    Append("categories", "Web").
//	    Append("categories", "React")
//
//	rec, err := formbuilder.New(form).
//	    Single("title", formbuilder.Required(), formbuilder.WithTransform(transform.TrimSpace())).
//	    InnerTransfer("title", "slug", formbuilder.WithTransform(transform.Slug())).
//	    Array("categories").
//	    Build()
//
// Keys the chain never names are merged on Build: scalar when submitted once, a
// sequence when repeated. Keys starting with "$ACTION" are framing metadata and never
// reach the record. Empty values are pruned before validation unless WithPruning(PruneNone).
//
// Operations never return errors directly; failures are recorded on the builder and
// returned by Build. See Err, Errors, and DiscardErrors.
package formbuilder
