package logsvc

import (
	"bytes"
	"log"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core/user"
)

func Test_RollbarLogger_prepare(t *testing.T) {
	var buf bytes.Buffer
	l := RollbarLogger{std: log.New(&buf, "", 0)}

	err := errors.New("boom")
	usr := user.User{ID: "user-1", Username: "awe", Email: "awe@test.cd"}
	custom := map[string]interface{}{"student_id": "student-1", "preview": "Sorry, I cannot"}

	tests := []struct {
		name     string
		args     []interface{}
		wantArgs []interface{}
	}{
		{name: "message only", args: nil, wantArgs: []interface{}{"msg"}},
		{name: "error passes through", args: []interface{}{err}, wantArgs: []interface{}{"msg", err}},
		{name: "user stripped from args", args: []interface{}{err, usr}, wantArgs: []interface{}{"msg", err}},
		{name: "custom map passes through", args: []interface{}{custom}, wantArgs: []interface{}{"msg", custom}},
		{name: "user and map", args: []interface{}{usr, custom}, wantArgs: []interface{}{"msg", custom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.prepare("msg", tt.args)
			if !reflect.DeepEqual(got, tt.wantArgs) {
				t.Errorf("prepare() = %v, want %v", got, tt.wantArgs)
			}
		})
	}
}
