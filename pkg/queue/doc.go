// Package queue moves analysis work through RabbitMQ.
//
// The server publishes AnalysisRequest messages to the durable
// analysis_requests queue; `rocketctl worker` consumes them with a
// worker pool. Progress fans out through the analysis_updates topic
// exchange with routing keys of the form "resume.<id>", so a client
// interested in one resume binds just that key.
//
// The queue is optional: with no queue_url configured the server runs
// analyses inline during the request instead.
package queue
