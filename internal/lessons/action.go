package lessons

import "github.com/tidwall/gjson"

// IsModeSwitch reports whether activating a switches the app to the
// dashboard simulator instead of sending a message.
func (a NextAction) IsModeSwitch() bool {
	return a.ActionType == ActionSwitchMode
}

// OutboundText is the message sent when a is activated: payload.choice,
// else payload.target_role, else the label.
func (a NextAction) OutboundText() string {
	if len(a.Payload) > 0 {
		p := gjson.ParseBytes(a.Payload)
		if p.IsObject() {
			if c := p.Get("choice").String(); c != "" {
				return c
			}
			if r := p.Get("target_role").String(); r != "" {
				return r
			}
		}
	}
	return a.Label
}
