// Package aspen is the simulation core of a 2D game engine: it owns game
// state (scenes, entities, cameras), advances it once per frame, and routes a
// typed event protocol between host game logic, windowing, and a GPU
// renderer.
//
// # Model
//
// A [Scene] is a named, ordered group of [Entity] values sharing one render
// target and window. The [Game] orchestrator owns scenes by lifecycle bucket
// (pending, active, suspended) and drives the per-frame cycle: stable z-sort,
// entity updates against a self-excluded sibling view, rendering into shared
// vertex/index buffers, camera follow-and-clamp, and render buffer emission.
//
// Hosts extend the engine without the engine knowing their concrete types:
// entities implement the [Entity] capability set (embed [BaseEntity] for
// defaults), and host events implement [ExternalEvent] (embed
// [BaseExternalEvent]), a fixed set of classification queries the router
// interrogates.
//
// # Concurrency
//
// The orchestrator is single-threaded: every platform event and timer tick
// enters one queue and is processed to completion before the next. The only
// background activity is the frame timer goroutine, which posts ticks
// through the thread-safe [EventQueue] and touches no simulation state.
//
// # Collaborators
//
// GPU and window work stays outside the core. The engine calls into the
// platform layer through the [Renderer] and [EventQueue] interfaces; the
// app subpackage provides an [Ebitengine]-backed implementation.
//
// [Ebitengine]: https://ebitengine.org
package aspen
