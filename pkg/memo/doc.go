// Package memo is the runtime behind cachegen's generated wrappers.
//
// Generated code only depends on the Cache interface, Key and Entry. Store is the default
// Cache, an in-process sturdyc client that deduplicates concurrent population of the same
// key. A Broadcaster fans evictions out to other processes; see package redisbus.
package memo
