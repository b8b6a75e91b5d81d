package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "level %q", in)
	}
}

func TestSetup_StdoutOnly(t *testing.T) {
	closer := Setup(SetupParams{Level: "debug"})
	assert.Nil(t, closer)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_File(t *testing.T) {
	closer := Setup(SetupParams{Level: "info", JSONFormat: true, FileName: t.TempDir() + "/studio"})
	if assert.NotNil(t, closer) {
		assert.NoError(t, closer.Close())
	}
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
	Setup(SetupParams{})
}
