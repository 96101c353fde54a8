package supervision

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{ op string }

func (e *timeoutError) Error() string { return "timeout during " + e.op }

type decodeError struct{ line int }

func (e *decodeError) Error() string { return fmt.Sprintf("decode failed at line %d", e.line) }

var errPoisonPill = errors.New("poison pill")

func failure(cause error) *Failure {
	return &Failure{ActorID: 1, ActorName: "worker", Cause: cause}
}

func TestDefaultDirectiveIsEscalate(t *testing.T) {
	s := NewOneForOne()
	assert.Equal(t, Escalate, s.Decide(failure(errors.New("unmapped"))))
}

func TestFirstMatchingHandlerDecides(t *testing.T) {
	s := NewOneForOne()
	HandleError[*timeoutError](s, Resume)
	HandleError[*decodeError](s, Restart)

	assert.Equal(t, Resume, s.Decide(failure(&timeoutError{op: "read"})))
	assert.Equal(t, Restart, s.Decide(failure(&decodeError{line: 3})))
}

func TestRegistrationOrderBreaksTies(t *testing.T) {
	s := NewOneForOne()
	// both handlers match the poison pill; the first registered wins
	s.HandleErrorIs(errPoisonPill, Stop)
	HandleError[error](s, Resume)

	wrapped := fmt.Errorf("handler: %w", errPoisonPill)
	assert.Equal(t, Stop, s.Decide(failure(wrapped)))
}

func TestWrappedErrorsMatch(t *testing.T) {
	s := NewOneForOne()
	HandleError[*decodeError](s, Restart)

	wrapped := fmt.Errorf("while parsing: %w", &decodeError{line: 9})
	assert.Equal(t, Restart, s.Decide(failure(wrapped)))
}

func TestHandleErrorIsMatchesSentinel(t *testing.T) {
	s := NewOneForOne().HandleErrorIs(errPoisonPill, Stop)

	assert.Equal(t, Stop, s.Decide(failure(errPoisonPill)))
	assert.Equal(t, Escalate, s.Decide(failure(errors.New("other"))))
}

func TestConfiguredDefaultApplies(t *testing.T) {
	s := NewOneForOne().WithDefaultDirective(Stop)
	HandleError[*timeoutError](s, Resume)

	assert.Equal(t, Stop, s.Decide(failure(errors.New("unmapped"))))
}

func TestNilFailureFallsBack(t *testing.T) {
	s := NewOneForOne()
	assert.Equal(t, Escalate, s.Decide(nil))
	assert.Equal(t, Escalate, s.Decide(&Failure{}))
}

func TestDirectiveString(t *testing.T) {
	assert.Equal(t, "resume", Resume.String())
	assert.Equal(t, "restart", Restart.String())
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "escalate", Escalate.String())
}
