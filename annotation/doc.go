/*

Package annotation recovers the "@" annotations written in the doc comment of a Go function
and parses each one into a [Decorator].

An annotation is a doc comment line whose text, once the comment marker is removed,
begins with "@":

	// FetchStatus reports whether the service is up.
	//
	// @router.get("/status", tags=["ops"])
	func FetchStatus(w http.ResponseWriter, r *http.Request) {}

[Extract] reads the source file a function was compiled from,
finds the declaration and returns its annotations parsed by [Parse].
[Source] and [Lines] expose the two halves of that process on their own.

Annotations are read line by line:
an annotation whose argument list spans several lines is not reconstructed,
and arguments are split on every comma, including those inside quotes or brackets.
Both are limitations callers can rely on, not bugs to be worked around.

*/
package annotation
