package notify

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default is beeep", func(t *testing.T) {
		n, err := New("", "")
		require.NoError(t, err)
		assert.IsType(t, &BeeepNotifier{}, n)
		assert.NoError(t, n.Close())
	})

	t.Run("notify-send", func(t *testing.T) {
		n, err := New("Notify-Send", "my app")
		require.NoError(t, err)
		require.IsType(t, &NotifySendNotifier{}, n)
		assert.Equal(t, "my app", n.(*NotifySendNotifier).AppName)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New("carrier-pigeon", "")
		assert.ErrorContains(t, err, "unknown notifier backend")
	})
}

func TestNotifySendNotifier(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	var gotName string
	var gotArgs []string
	execCommand = func(name string, arg ...string) *exec.Cmd {
		gotName = name
		gotArgs = arg
		return exec.Command("true")
	}

	n := &NotifySendNotifier{AppName: DefaultAppName}
	require.NoError(t, n.Notify("Updates available", "There is 1 update available"))
	assert.Equal(t, "notify-send", gotName)
	assert.Equal(t, []string{"--app-name", "update notifier", "Updates available", "There is 1 update available"}, gotArgs)

	execCommand = func(name string, arg ...string) *exec.Cmd {
		return exec.Command("false")
	}
	assert.Error(t, n.Notify("a", "b"))
}

func TestDBusNotifierClosed(t *testing.T) {
	n := &DBusNotifier{appName: DefaultAppName}
	assert.Error(t, n.Notify("a", "b"))
	assert.NoError(t, n.Close())
}
