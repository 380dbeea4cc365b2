package permissions

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestAccessResolution(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	ctrl := NewController([]int64{1, 2}, []int64{2, 3}, logger)

	cases := []struct {
		userID int64
		want   AccessType
	}{
		{1, Admin},
		{2, Admin}, // admin wins on overlap
		{3, Operator},
		{4, Demo},
	}

	for _, tc := range cases {
		if got := ctrl.GetAccessType(tc.userID); got != tc.want {
			t.Errorf("GetAccessType(%d) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}
