package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceEnvVars(t *testing.T) {
	t.Setenv("ADITOF_DEVICE", "/dev/video0;/dev/v4l-subdev1")

	s := ReplaceEnvVars("device: ${ADITOF_DEVICE}")
	require.Equal(t, "device: /dev/video0;/dev/v4l-subdev1", s)

	s = ReplaceEnvVars("frame_type: ${ADITOF_FRAME_TYPE:depth_ir}")
	require.Equal(t, "frame_type: depth_ir", s)

	s = ReplaceEnvVars("firmware: ${ADITOF_FIRMWARE}")
	require.Equal(t, "firmware: ${ADITOF_FIRMWARE}", s)
}
