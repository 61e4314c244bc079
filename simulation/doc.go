// Package simulation holds the producers of the chat feed: the history seeder,
// the peer injector and the send pipeline. None of them owns a goroutine or a
// timer; runtime/workers.FeedWorker drives them from its event loop.
package simulation
