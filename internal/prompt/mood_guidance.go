package prompt

// MoodGuidance returns a short tone guideline for a detected mood label.
func MoodGuidance(mood string) string {
	switch mood {
	case "happy":
		return "Share their good moment and ask what helped, so they can repeat it."
	case "okay":
		return "Keep a light, curious tone and invite them to say more if they want."
	case "sad":
		return "Slow down, validate the sadness, and avoid rushing to fix it."
	case "anxious":
		return "Offer one calming step first, such as a slow breath, before anything else."
	case "angry":
		return "Stay calm and non-defensive; name the frustration without judging it."
	case "stressed":
		return "Help break the pressure into one small, doable next step."
	case "lonely":
		return "Emphasise that they are not alone and gently explore who they could reach out to."
	case "tired":
		return "Keep replies short and suggest rest or a gentle self-care idea."
	default:
		return ""
	}
}
