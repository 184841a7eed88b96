// Package chat implements the retrieval-augmented conversation loop.
//
// A Session ties together a retriever, a text generator, and an append-only
// conversation Memory. Each Ask retrieves the documents most relevant to the
// question, assembles a prompt from those documents plus the full transcript,
// and generates an answer. Only successful asks extend the transcript; a
// failed ask leaves the session exactly as it was.
package chat
