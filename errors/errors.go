package errors

import "fmt"

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrCatalogInconsistency = fmt.Errorf("preference has no ranked catalog match")
	ErrDegenerateCatalog    = fmt.Errorf("catalog category is empty")
	ErrDuplicateItem        = fmt.Errorf("duplicate catalog item")
	ErrUnknownCategory      = fmt.Errorf("unknown catalog category")
	ErrUnknownItem          = fmt.Errorf("unknown catalog item")
	ErrInvalidRequest       = fmt.Errorf("invalid request")
	ErrNoPreferences        = fmt.Errorf("no preferences found")
)
