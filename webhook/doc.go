// Package webhook verifies and classifies webhook deliveries from the Vortex
// platform.
//
// # Security Model
//
//   - Every delivery carries X-Vortex-Signature: hex(HMAC-SHA256(secret, raw body)).
//   - Signatures are compared with crypto/subtle in constant time.
//   - The signature is checked before the body is parsed; an unverified body
//     never reaches classification.
//   - A Verifier cannot be built without a secret.
//
// # Event Kinds
//
// A verified body is either a *StateChangeEvent (a record changed on the
// platform) or an *AnalyticsEvent (client-side telemetry). Bodies carrying a
// "name" field are analytics events; everything else is a state change.
// WithStrictClassification rejects bodies that have neither "name" nor "type".
//
// # Example Usage
//
//	v, err := webhook.NewVerifier(os.Getenv("VORTEX_WEBHOOK_SECRET"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	http.Handle("/webhooks/vortex", webhook.NewHandler(v, func(ctx context.Context, ev webhook.Event, raw []byte) error {
//		switch ev := ev.(type) {
//		case *webhook.StateChangeEvent:
//			// ev.Type == "invitation.accepted" ...
//		case *webhook.AnalyticsEvent:
//			// ev.Name ...
//		}
//		return nil
//	}))
package webhook
