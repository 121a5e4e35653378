package prompt

// The default prompt bodies. A Goal can override any of them at
// construction time; the data keys each template expects are listed on
// the corresponding variable.

// DefaultGoal is the continuation prompt. Keys: goal, information_list,
// confirmation, completed_string, out_of_scope, connected_goals (maps
// with user_intent and label), messages.
var DefaultGoal = MustNew("goal", `Your role is to continue the conversation below as the Assistant.
Goal: {{.goal}}
{{- if .information_list}}
Information to be gathered: {{join .information_list ", "}}
This is all of the information you are to gather, do not ask for anything else.
{{- if .confirmation}}
Once you have the information ask for a confirmation.
If you receive this confirmation reply only with:
{{flag .completed_string}}
{{- else}}
Once you have the information reply only with:
{{flag .completed_string}}
{{- end}}
{{- end}}
{{- if .out_of_scope}}
{{- range .connected_goals}}
If the user wants {{.user_intent}} reply only with this:
{{flag .label}}
{{- end}}
For anything outside of the scope of the goal:
{{.out_of_scope}}
{{- end}}
Respond naturally, and don't repeat yourself.
Conversation so far:
{{- range .messages}}
{{.Actor}}: {{.Content}}
{{- end}}
Assistant:`)

// DefaultExtraction is the structured-extraction prompt, called in JSON
// mode. Keys: fields (maps with name, description, format_hint), messages.
var DefaultExtraction = MustNew("extraction", `Given the conversation below output JSON which includes only the following keys:
{{- range .fields}}
{{.name}}: {{.description}}{{if .format_hint}} ({{.format_hint}}){{end}}
{{- end}}
If any keys are not provided in the conversation set their values to null.
Conversation:
{{- range .messages}}
{{.Actor}}: {{.Content}}
{{- end}}`)

// DefaultValidation is the remediation prompt rendered when extracted
// values fail their validators. Keys: validation_error_messages, messages.
var DefaultValidation = MustNew("validation", `Your role is to continue the conversation below as the Assistant.
Unfortunately you had trouble processing the user's request because of the following problems:
{{- range .validation_error_messages}}
* {{.}}
{{- end}}
Continue the conversation naturally, and explain the problems.
Do not be creative. Do not make suggestions as to how to fix the problems.
Conversation so far:
{{- range .messages}}
{{.Actor}}: {{.Content}}
{{- end}}
Assistant:`)

// DefaultRephrase naturalizes a fixed response without adding new
// information. Keys: response, goal, message_history.
var DefaultRephrase = MustNew("rephrase", `Your role is to continue the conversation below as the Assistant.
Normally you respond with: {{.response}}
{{- if .message_history}}
Goal: {{.goal}}
But now you need to take into account the conversation so far and tailor your response accordingly.
Continue the conversation naturally. Do not be creative.
Conversation so far:
{{- range .message_history}}
{{.Actor}}: {{.Content}}
{{- end}}
{{- else}}
Simply rephrase your response as the Assistant.
{{- end}}
Assistant:`)

// DefaultClosingRephrase is the alternate rephrase template used only for
// the final courtesy message at conversation end. Keys: response,
// message_history.
var DefaultClosingRephrase = MustNew("closing_rephrase", `Your role is to wrap up the conversation below as the Assistant.
Normally you close with: {{.response}}
Rephrase this closing message so it fits the conversation, without adding any new information.
Do not be creative. Do not ask any further questions.
Conversation so far:
{{- range .message_history}}
{{.Actor}}: {{.Content}}
{{- end}}
Assistant:`)

// DefaultActionRephrase naturalizes an action's rendered response
// template. Keys: response, message_history.
var DefaultActionRephrase = MustNew("action_rephrase", `Your role is to continue the conversation below as the Assistant.
Please rephrase the following response to make it more natural and engaging, taking into account the conversation so far.
Continue the conversation naturally. Do not be creative. Do not include information, actions, suggestions, facts or details that are not in the response you are to rephrase.
Response:
{{.response}}
Conversation so far:
{{- range .message_history}}
{{.Actor}}: {{.Content}}
{{- end}}
Assistant:`)

// DefaultErrorText is the fixed apology surfaced when a structured
// extraction cannot be parsed. It is intentionally a constant, not a
// template render or a model call, so the failure path cannot fail.
const DefaultErrorText = "I'm sorry, but I'm having trouble processing that request right now."

// DefaultApologyText is the generic fallback the orchestrator answers
// with when anything in the turn cascade fails unexpectedly.
const DefaultApologyText = "I'm sorry, something went wrong."
