// Package event provides definitions for global DOM
// events that are dispatched by the `HX-Trigger`
// header in HTMX requests.
package event

import (
	"github.com/angelofallars/htmx-go"
)

// Event is a client-side event that can be triggered
// on the server. static/app.js listens for each one
// on window.
//
// Event names should be kebab-case.
type Event string

// Event satisfies [fmt.Stringer]
func (e Event) String() string { return string(e) }

const SetErrMessage Event = "set-err-message"

func TriggerSetErrMessage(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetErrMessage.String(), message)
}

const SetStatus Event = "set-status"

// TriggerSetStatus shows a short confirmation such as "Saved".
func TriggerSetStatus(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetStatus.String(), message)
}

const ShareLinkCreated Event = "share-link-created"

func TriggerShareLinkCreated(link string) htmx.EventTrigger {
	return htmx.TriggerDetail(ShareLinkCreated.String(), link)
}

const ProfilesChanged Event = "profiles-changed"

var TriggerProfilesChanged = htmx.Trigger(ProfilesChanged.String())

const DisableShare Event = "disable-share"

var TriggerDisableShare = htmx.Trigger(DisableShare.String())

const EnableShare Event = "enable-share"

var TriggerEnableShare = htmx.Trigger(EnableShare.String())
