package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var seen = make(map[string]int)

// ValidateSnapshot compares the JSON encoding of obj with a file in testdata
// named after the calling test. A missing file is written out so the first
// run establishes the baseline. depth skips intermediate helper frames when
// determining the caller.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	pc, _, _, _ := runtime.Caller(1 + depth)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	n := seen[funcName]
	seen[funcName] = n + 1

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, n))

	got, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		panic(err)
	}

	want, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			writeSnapshot(filename, got)
			return
		}

		panic(err)
	}

	if !assert.Equal(t, strings.Trim(string(want), "\n"), string(got), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func writeSnapshot(filename string, data []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		panic(err)
	}
}
