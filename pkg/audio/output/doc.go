// ABOUTME: Package documentation for output backends
// ABOUTME: Describes the pull-model stream contract

// Package output adapts platform audio devices to a pull-model render
// callback. The engine never talks to a device directly; it renders
// into buffers handed to it by a Stream implementation.
package output
