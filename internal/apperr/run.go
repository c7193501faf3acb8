package apperr

import "context"

// Run executes op and converts any failure into a classified AppError. On
// failure it calls onError when supplied (otherwise the classifier's
// notifier) and returns the zero value with ok=false. The false flag is the
// only reliable failure signal: a zero result alone is ambiguous for
// operations whose legitimate result can be empty.
func Run[T any](ctx context.Context, c *Classifier, op func(context.Context) (T, error), onError func(*AppError)) (T, bool) {
	result, err := op(ctx)
	if err == nil {
		return result, true
	}

	appErr := c.Classify(err)
	if onError != nil {
		onError(appErr)
	} else {
		c.notify(appErr)
	}
	var zero T
	return zero, false
}
