package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testCommand struct {
	Fail bool
}

func (c testCommand) Validate() error {
	return nil
}

type invalidCommand struct{}

func (c invalidCommand) Validate() error {
	return errors.New("always invalid")
}

func TestSend_DispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	commandBus := NewCommandBus()
	var handled bool
	err := commandBus.Register(testCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) error {
			handled = true
			return nil
		}))
	require.NoError(t, err)

	// Act
	err = commandBus.Send(context.Background(), testCommand{})

	// Assert
	assert.NoError(t, err)
	assert.True(t, handled)
}

func TestSend_RejectsInvalidCommand(t *testing.T) {
	// Arrange
	commandBus := NewCommandBus()
	err := commandBus.Register(invalidCommand{}, CommandHandlerFunc(
		func(ctx context.Context, cmd Command) error {
			t.Fatal("handler must not run for an invalid command")
			return nil
		}))
	require.NoError(t, err)

	// Act
	err = commandBus.Send(context.Background(), invalidCommand{})

	// Assert
	assert.ErrorContains(t, err, "command validation failed")
}

func TestSend_UnregisteredCommandFails(t *testing.T) {
	// Act
	err := NewCommandBus().Send(context.Background(), testCommand{})

	// Assert
	assert.ErrorContains(t, err, "no handler registered")
}

func TestLoggingMiddleware_PassesThroughAndLogsFailures(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.DebugLevel)
	logged := LoggingMiddleware(zap.New(core))

	commandBus := NewCommandBus()
	handlerErr := errors.New("handler exploded")
	err := commandBus.Register(testCommand{}, logged(CommandHandlerFunc(
		func(ctx context.Context, cmd Command) error {
			if cmd.(testCommand).Fail {
				return handlerErr
			}
			return nil
		})))
	require.NoError(t, err)

	// Act
	okErr := commandBus.Send(context.Background(), testCommand{})
	failErr := commandBus.Send(context.Background(), testCommand{Fail: true})

	// Assert
	assert.NoError(t, okErr)
	assert.ErrorIs(t, failErr, handlerErr)
	assert.Equal(t, 2, logs.FilterMessage("Executing command").Len())
	require.Equal(t, 1, logs.FilterMessage("Command failed").Len())
	entry := logs.FilterMessage("Command failed").All()[0]
	assert.Equal(t, "testCommand", entry.ContextMap()["type"])
}
