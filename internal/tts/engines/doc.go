// Package engines contains the synthesis backends: Google Cloud
// Text-to-Speech and AWS Polly (online) and a mock engine that writes
// silence for dry runs. Each implements tts.Backend; New builds one by name
// and wraps it in the clip cache when one is configured.
package engines
