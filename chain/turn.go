package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smallnest/goalchain/llm"
	"github.com/smallnest/goalchain/prompt"
)

// turn drives one conversational turn of the bound goal, as an ordered
// decision cascade: opener, ingest + extraction, pre condition check,
// continuation call, post condition check, connection sentinel scan,
// completion sentinel, fallback.
func (tc *TurnContext) turn(input string) (*Outcome, error) {
	g, s := tc.goal, tc.sess

	// First assistant utterance when the goal becomes active.
	if len(s.messages) == 0 && input == "" {
		text, err := tc.simulate(g.opener, s.handOver, false)
		if err != nil {
			return nil, err
		}
		return MessageOutcome(text), nil
	}

	if input != "" {
		s.messages = append(s.messages, Message{Actor: ActorUser, Content: input})

		// Extraction runs on every user turn so data conditions can fire
		// mid-conversation. A mid-turn parse failure is non-fatal: shared
		// data simply doesn't advance, and completion re-extracts anyway.
		if len(g.fields) > 0 {
			raw, err := tc.extract()
			switch {
			case err == nil:
				tc.mergeExtracted(raw)
			case errors.Is(err, ErrMalformedExtraction):
				tc.conv.logger.Debug("goal %s: mid-turn extraction did not parse, skipping merge", g.label)
			default:
				return nil, err
			}
		}
	}

	// Pre-check conditions before spending a continuation call.
	if out := tc.matchCondition(); out != nil {
		return out, nil
	}

	promptText, err := g.goalTpl.Render(g.goalPromptData(copyMessages(s.messages)))
	if err != nil {
		return nil, err
	}
	text, err := tc.completeText(promptText, false)
	if err != nil {
		return nil, err
	}

	if out := tc.matchCondition(); out != nil {
		return out, nil
	}

	// Case-insensitive substring scan for connected-goal sentinels. The
	// sentinel text itself is never appended as a visible message.
	lower := strings.ToLower(text)
	for _, cn := range g.connections {
		if strings.Contains(lower, strings.ToLower(prompt.Flag(cn.Target.label))) {
			tc.conv.logger.Debug("goal %s: handoff sentinel for %s detected", g.label, cn.Target.label)
			return HandoffOutcome(cn.Target, KeepMessages(cn.KeepMessages), HandOver(cn.HandOver)), nil
		}
	}

	if strings.Contains(lower, prompt.Flag(CompletedToken)) {
		return tc.completeGoal()
	}

	appended, err := tc.simulate(text, false, false)
	if err != nil {
		return nil, err
	}
	return MessageOutcome(appended), nil
}

// matchCondition evaluates the goal's conditions against shared data in
// declaration order. On the first match it appends the optional silent
// narration and returns the handoff outcome.
func (tc *TurnContext) matchCondition() *Outcome {
	for _, cond := range tc.goal.conditions {
		if cond.When(tc.conv.data) {
			if cond.SilentText != "" {
				tc.appendAssistant(cond.SilentText)
			}
			tc.conv.logger.Debug("goal %s: condition fired, handing over to %s", tc.goal.label, cond.Target.label)
			return HandoffOutcome(cond.Target, KeepMessages(cond.KeepMessages), HandOver(cond.HandOver))
		}
	}
	return nil
}

// completeGoal runs the completion path: structured extraction over the
// full transcript, validator pass, and either a remediation message or
// the terminal data outcome.
func (tc *TurnContext) completeGoal() (*Outcome, error) {
	g := tc.goal

	raw, err := tc.extract()
	if errors.Is(err, ErrMalformedExtraction) {
		tc.conv.logger.Debug("goal %s: completion extraction did not parse", g.label)
		return MessageOutcome(tc.appendAssistant(g.errorText)), nil
	}
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, fd := range g.fields {
		v, present := raw[fd.name]
		if !present || fd.field.Validator == nil {
			continue
		}
		normalized, verr := fd.field.Validator(v)
		if verr != nil {
			var ve *ValidationError
			if errors.As(verr, &ve) {
				problems = append(problems, ve.Message)
				continue
			}
			return nil, verr
		}
		raw[fd.name] = normalized
	}

	if len(problems) > 0 {
		promptText, err := g.validationTpl.Render(map[string]any{
			"validation_error_messages": problems,
			"messages":                  copyMessages(tc.sess.messages),
		})
		if err != nil {
			return nil, err
		}
		text, err := tc.completeText(promptText, false)
		if err != nil {
			return nil, err
		}
		appended, err := tc.simulate(text, false, false)
		if err != nil {
			return nil, err
		}
		return MessageOutcome(appended), nil
	}

	if g.onComplete != nil {
		return g.onComplete(tc, raw)
	}
	return DataOutcome(raw), nil
}

// extract performs the structured extraction call over the full
// transcript and parses the JSON-object response.
func (tc *TurnContext) extract() (map[string]any, error) {
	g := tc.goal
	promptText, err := g.extractionTpl.Render(g.extractionPromptData(copyMessages(tc.sess.messages)))
	if err != nil {
		return nil, err
	}
	text, err := tc.completeText(promptText, true)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}
	return raw, nil
}

// mergeExtracted merges non-null values of declared fields into the
// conversation's shared data. Keys the model invented are dropped.
func (tc *TurnContext) mergeExtracted(raw map[string]any) {
	for _, fd := range tc.goal.fields {
		if v, ok := raw[fd.name]; ok && v != nil {
			tc.conv.data[fd.name] = v
			tc.conv.logger.Debug("goal %s: merged extracted field %s", tc.goal.label, fd.name)
		}
	}
}

// completeText issues one blocking completion call with the goal's model
// configuration.
func (tc *TurnContext) completeText(promptText string, jsonMode bool) (string, error) {
	g := tc.goal
	model := g.model
	if jsonMode {
		model = g.jsonModel
	}
	return tc.conv.client.Complete(tc.ctx, llm.Request{
		Model:    model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: promptText}},
		JSONMode: jsonMode,
		Params:   g.params,
	})
}

// appendAssistant appends text to the transcript as an assistant message
// and returns it.
func (tc *TurnContext) appendAssistant(text string) string {
	tc.sess.messages = append(tc.sess.messages, Message{Actor: ActorAssistant, Content: text})
	return text
}

// simulate appends text as an assistant message, first passing it through
// the rephrase (or closing rephrase) model call when requested.
func (tc *TurnContext) simulate(text string, rephrase, closing bool) (string, error) {
	if rephrase {
		tpl := tc.goal.rephraseTpl
		if closing {
			tpl = tc.goal.closingTpl
		}
		out, err := tc.rephraseWith(tpl, map[string]any{
			"response":        text,
			"goal":            tc.goal.description,
			"message_history": copyMessages(tc.sess.messages),
		})
		if err != nil {
			return "", err
		}
		text = out
	}
	return tc.appendAssistant(text), nil
}

// rephraseWith renders a rephrase template and runs the free-text model
// call over it.
func (tc *TurnContext) rephraseWith(tpl *prompt.Template, data map[string]any) (string, error) {
	promptText, err := tpl.Render(data)
	if err != nil {
		return "", err
	}
	return tc.completeText(promptText, false)
}
