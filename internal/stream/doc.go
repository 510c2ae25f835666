// Package stream carries whale trades over WebSocket.
//
// Conn is the server side of one /ws/whales connection and satisfies the
// poller's Subscriber interface. Client is the dialing side used by
// cmd/streamtest.
//
// Every frame is a JSON Message:
//
//	{"type": "whale_trade", "data": {...trade...}}
package stream
