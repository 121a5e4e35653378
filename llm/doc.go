// Package llm defines the model-completion collaborator of the goalchain
// engine and ships two implementations: a direct OpenAI client and an
// adapter for any langchaingo llms.Model.
//
// The engine issues exactly two kinds of calls through the Client
// interface: free-text goal continuation and structured extraction. The
// latter sets Request.JSONMode, and implementations are required to ask
// the provider for a JSON-object response format in that case.
//
//	client := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
//
// or, via langchaingo:
//
//	model, _ := ollama.New(ollama.WithModel("llama3"))
//	client := llm.NewLangChainModel(model)
package llm
