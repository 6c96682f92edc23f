package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "run", "stage", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Fatalf("round trip %q -> %q", s, l.String())
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLevelScopes(t *testing.T) {
	if LevelRun.ShouldEmit(ScopeTarget) {
		t.Fatalf("run level must not admit targets")
	}
	if !LevelStage.ShouldEmit(ScopeStage) || LevelStage.ShouldEmit(ScopeMember) {
		t.Fatalf("stage level admits stage but not member")
	}
	if !LevelDebug.ShouldEmit(ScopeMember) {
		t.Fatalf("debug admits everything")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelStage, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeRun, "generate")
	_, stage := Start(ctx, ScopeStage, "inspect")
	Point(tr, ScopeMember, "member", "Apple", stage.ID())
	stage.WithExtra("members", "3").End("")
	run.End("ok")

	out := buf.String()
	for _, want := range []string{"\u2192 generate", "\u2192 inspect", "\u2190 inspect", "{members=3}", "(ok)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Apple") {
		t.Fatalf("member events must be filtered at stage level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeMember, "member", "Banana", 0, "value", "1")
	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["detail"] != "Banana" || got["scope"] != "member" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeRun, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.DumpFailed(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump wrote %q", buf.String())
	}
}

func TestDumpFailedKeepsFailingTargets(t *testing.T) {
	r := NewRingTracer(64, LevelError)
	ctx := WithTracer(context.Background(), r)
	ctx, run := Start(ctx, ScopeRun, "generate")

	okCtx, ok := Start(ctx, ScopeTarget, "package:./ok")
	_, load := Start(okCtx, ScopeStage, "load")
	load.End("")
	ok.End("")

	badCtx, bad := Start(ctx, ScopeTarget, "package:./bad")
	_, inspect := Start(badCtx, ScopeStage, "inspect")
	Point(r, ScopeMember, "member", "Broken", inspect.ID())
	inspect.End("failed")
	bad.End("")
	run.End("")

	var buf bytes.Buffer
	if err := r.DumpFailed(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"generate", "package:./bad", "inspect", "Broken"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "./ok") || strings.Contains(out, "load") {
		t.Fatalf("dump kept a passing target:\n%s", out)
	}
}

func TestErrorLevelRingKeepsEverything(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeRing, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeStage, "load", 0).End("")
	if got := len(tr.(*RingTracer).Snapshot()); got != 2 {
		t.Fatalf("ring kept %d events, want 2", got)
	}
}

func TestNopAndDisabledSpans(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level must give Nop, got %v %v", tr, err)
	}
	s := Begin(tr, ScopeRun, "x", 0)
	if s.ID() != 0 {
		t.Fatalf("disabled span must have no id")
	}
	s.WithExtra("k", "v").End("")
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must give Nop")
	}
}

func TestMultiTracerAndHeartbeat(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(16, LevelRun)
	m := NewMultiTracer(LevelRun, NewStreamTracer(&buf, LevelRun, FormatText), ring)
	if m.Ring() != ring {
		t.Fatalf("Ring() must find the ring tracer")
	}
	h := StartHeartbeat(m, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	h.Stop()
	h.Stop()
	if len(ring.Snapshot()) == 0 || !strings.Contains(buf.String(), "heartbeat") {
		t.Fatalf("heartbeat events missing")
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}
