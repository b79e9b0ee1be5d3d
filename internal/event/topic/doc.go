// Package topic defines the hierarchical event tag type and its wildcard
// pattern matching. Every event carried by the bus is addressed by a Topic;
// subscriptions may use patterns ("community.*", "**") to observe groups of
// tags or the entire stream.
package topic
