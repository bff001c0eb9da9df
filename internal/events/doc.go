// Package events provides a topic-filtered pub/sub emitter used to surface
// translation-pipeline progress to the CLI and other observers without
// coupling pipeline code to presentation.
package events
