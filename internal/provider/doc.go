// Package provider selects the capability provider a lifecycle hook should run.
//
// Each capability kind (speech synthesis, text completion) has its own static,
// ordered list of providers. Resolution walks that list in rank order and
// returns the first provider whose credential gate passes and whose artifact
// exists under the utilities directory:
//
//	utils/
//	  llm/gemini-llm     rank 1  GOOGLE_API_KEY | GEMINI_API_KEY
//	  llm/openai-llm     rank 2  OPENAI_API_KEY
//	  llm/anthropic-llm  rank 3  ANTHROPIC_API_KEY
//	  tts/gemini-tts     rank 1  GOOGLE_API_KEY
//	  tts/openai-tts     rank 2  OPENAI_API_KEY
//	  tts/local-tts      rank 3  (keyless)
//
// The environment and filesystem are passed in explicitly as Env and
// Filesystem so resolution can be exercised without touching process state.
// Kinds are independent: exhausting one list never consults another.
package provider
