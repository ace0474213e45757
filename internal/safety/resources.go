// Package safety holds the fixed crisis guidance shown when a message signals risk.
package safety

// CrisisReply is sent instead of a model reply when a crisis trigger fires.
const CrisisReply = "I'm really glad you told me. Your safety matters most. If you're in immediate danger, call 112 now. " +
	"You can also reach India's 24x7 KIRAN helpline at 1800-599-0019. I'm with you. Let's take one small step together. " +
	"Would grounding help? Name 5 things you can see, 4 you can touch, 3 you can hear. You can also tap Crisis Support below."

// Helpline is a phone or web contact.
type Helpline struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Dial        string `json:"dial"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
}

// Resources is the crisis support payload.
type Resources struct {
	EmergencyNumber string     `json:"emergency_number"`
	Helplines       []Helpline `json:"helplines"`
	Grounding       []string   `json:"grounding"`
	SafetySteps     []string   `json:"safety_steps"`
	Disclaimer      string     `json:"disclaimer"`
}

// DefaultResources returns the India helpline set.
func DefaultResources() Resources {
	return Resources{
		EmergencyNumber: "112",
		Helplines: []Helpline{
			{Name: "KIRAN", Phone: "1800-599-0019", Dial: "tel:18005990019", Description: "National mental health helpline, 24x7"},
			{Name: "iCall (TISS)", Phone: "9152987821", Dial: "tel:9152987821", URL: "https://icallhelpline.org", Description: "Psychosocial helpline"},
			{Name: "AASRA", Phone: "+91-9820466726", Dial: "tel:+919820466726", Description: "Suicide prevention"},
			{Name: "Emergency", Phone: "112", Dial: "tel:112", Description: "Immediate danger"},
		},
		Grounding: []string{
			"Look around: name 5 things you can see.",
			"Touch 4 things: notice texture and temperature.",
			"Listen for 3 sounds around you.",
			"Take 2 deep breaths: inhale 4, exhale 6.",
			"Say 1 kind thing to yourself: \"I deserve care.\"",
		},
		SafetySteps: []string{
			"If you have a plan to hurt yourself, consider removing harmful items from reach and stay with someone you trust.",
			"Text or call a trusted friend, family member, teacher, or counselor.",
			"Visit the nearest hospital emergency department if needed.",
		},
		Disclaimer: "ZetaZen is not a crisis service. Always reach out for urgent support.",
	}
}
