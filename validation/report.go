// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package validation

import (
	"fmt"
	"strings"

	"github.com/gogpu/rhi"
)

// A Finding is one rule violation detected while validating a call.
type Finding struct {
	// Severity is rhi.SeverityError for rule violations and
	// rhi.SeverityWarning for conditions that are technically legal but
	// almost certainly unintended. Warnings still fail the call.
	Severity rhi.MessageSeverity

	// Call names the device method being validated, "CreateTexture" for
	// example.
	Call string

	// Message describes the violation.
	Message string
}

// Error is returned by device methods that failed validation. It
// carries every finding detected during the call.
type Error struct {
	call     string
	findings []Finding
}

// Error renders all findings as one message. A single finding renders
// on one line, multiple findings as a header followed by one indented
// line per finding.
func (e *Error) Error() string {
	if len(e.findings) == 1 {
		return e.call + ": " + e.findings[0].Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d validation findings:", e.call, len(e.findings))
	for _, f := range e.findings {
		b.WriteString("\n  ")
		if f.Severity == rhi.SeverityWarning {
			b.WriteString("warning: ")
		}
		b.WriteString(f.Message)
	}
	return b.String()
}

// Call names the device method that failed.
func (e *Error) Call() string { return e.call }

// Findings returns the individual violations.
func (e *Error) Findings() []Finding { return e.findings }

// Severity returns the highest severity among the findings.
func (e *Error) Severity() rhi.MessageSeverity {
	var severity rhi.MessageSeverity
	for _, f := range e.findings {
		if f.Severity > severity {
			severity = f.Severity
		}
	}
	return severity
}

// report accumulates the findings of one device call.
type report struct {
	device   *Device
	call     string
	findings []Finding
}

func (d *Device) begin(call string) *report {
	return &report{device: d, call: call}
}

// errorf records a rule violation.
func (r *report) errorf(format string, args ...any) {
	r.add(rhi.SeverityError, format, args...)
}

// warningf records a suspicious but technically legal condition.
// Warnings fail the call like errors do.
func (r *report) warningf(format string, args ...any) {
	r.add(rhi.SeverityWarning, format, args...)
}

func (r *report) add(severity rhi.MessageSeverity, format string, args ...any) {
	r.findings = append(r.findings, Finding{
		Severity: severity,
		Call:     r.call,
		Message:  fmt.Sprintf(format, args...),
	})
}

// failed reports whether any finding has been recorded.
func (r *report) failed() bool { return len(r.findings) > 0 }

// finish delivers the accumulated findings to the message callback,
// invoked at most once per call, and returns the error to hand to the
// caller. A clean report returns nil.
func (r *report) finish() error {
	if len(r.findings) == 0 {
		return nil
	}
	err := &Error{call: r.call, findings: r.findings}
	r.device.callback.Message(err.Severity(), err.Error())
	return err
}

// displayName renders a resource debug name for diagnostics.
func displayName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}
