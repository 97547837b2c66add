// Package ecs provides ECS adapters for tooni's composition events.
//
// The primary adapter is [NewDonburiSink], which bridges controller events
// (item added or removed, background set or cleared, exported) into a
// [Donburi] world as typed events. Subscribe to [CompositionEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
