package supervision

import "errors"

// errorHandler matches one error shape and carries the directive applied on
// a match.
type errorHandler struct {
	matches   func(error) bool
	directive Directive
}

// OneForOneStrategy resolves a failure against typed error handlers,
// consulted in registration order; the first matching handler decides. When
// none match, the configured default directive applies (Escalate unless
// overridden).
type OneForOneStrategy struct {
	handlers []errorHandler
	fallback Directive
}

var _ Strategy = (*OneForOneStrategy)(nil)

func NewOneForOne() *OneForOneStrategy {
	return &OneForOneStrategy{fallback: Escalate}
}

// HandleError registers a handler matching failures whose cause chain
// contains an error of type E, per errors.As.
func HandleError[E error](s *OneForOneStrategy, directive Directive) *OneForOneStrategy {
	s.handlers = append(s.handlers, errorHandler{
		matches: func(err error) bool {
			var target E
			return errors.As(err, &target)
		},
		directive: directive,
	})
	return s
}

// HandleErrorIs registers a handler matching failures whose cause chain
// contains target, per errors.Is.
func (s *OneForOneStrategy) HandleErrorIs(target error, directive Directive) *OneForOneStrategy {
	s.handlers = append(s.handlers, errorHandler{
		matches: func(err error) bool {
			return errors.Is(err, target)
		},
		directive: directive,
	})
	return s
}

// WithDefaultDirective overrides the directive applied when no handler
// matches.
func (s *OneForOneStrategy) WithDefaultDirective(d Directive) *OneForOneStrategy {
	s.fallback = d
	return s
}

func (s *OneForOneStrategy) Decide(failure *Failure) Directive {
	if failure == nil || failure.Cause == nil {
		return s.fallback
	}
	for _, h := range s.handlers {
		if h.matches(failure.Cause) {
			return h.directive
		}
	}
	return s.fallback
}
