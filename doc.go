// Package objkit provides the error model shared by the objkit client
// packages: service errors keyed by a process wide registry of error kinds,
// configuration, protocol and operation errors, and input validation errors.
//
// Operations live in the s3 package; request signing lives under httpauth.
package objkit
