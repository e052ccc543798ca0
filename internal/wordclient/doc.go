// Package wordclient talks to the external grading service. It fetches the
// next batch of words and submits buffered answers for grading. The client is
// stateless and never retries: every failure is returned to the caller,
// classified as a network, authentication, rejection or invalid-response
// error.
package wordclient
