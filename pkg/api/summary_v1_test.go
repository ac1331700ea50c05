package api

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
)

func TestSummaryV1_KeysStable(t *testing.T) {
	b, err := json.Marshal(SummaryV1{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	const want = "bytes,cols,compression,delimiter,duration_seconds,input,lines,matrix,nonzeros,orientation,output,rows,run_id,value_bits,version"
	if got := strings.Join(keys, ","); got != want {
		t.Fatalf("SummaryV1 keys changed:\n got:  %s\n want: %s", got, want)
	}
}
