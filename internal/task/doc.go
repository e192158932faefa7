// Package task holds the task record, its validation rules, the
// filter/search engine and the pure operations that compute the next task
// collection from the current one.
//
// Nothing in this package mutates a collection it is given. Callers keep the
// single mutable collection and replace it with whatever an operation returns.
package task
