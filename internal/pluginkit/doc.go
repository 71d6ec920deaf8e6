// Package pluginkit is the device side of the host: plugins register message
// types and devices, and devices report byte-stream messages.
//
// Synchronous devices are driven by the host's update loop and may only send
// from inside their update callback. Asynchronous devices run their wait
// callback repeatedly on a goroutine of their own; their messages are queued
// and handed to the Handler by the next Update, or by Stop. Update and Stop
// never deliver at the same time, so the handler is never called
// concurrently.
package pluginkit
