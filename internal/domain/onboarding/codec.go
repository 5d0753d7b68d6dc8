package onboarding

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// EncodeDraft serializes a draft at the current schema version.
func EncodeDraft(d Draft) ([]byte, error) {
	d = d.Clone()
	d.Version = SchemaVersion
	return json.Marshal(d)
}

// DecodeDraft reads any known persisted shape and upgrades it:
//
//   - v0: the browser store export, {"state": {...}, "version": 0}, with the
//     connection under "gmail" and custom links carrying "name".
//   - v1: flat record with "gmail", "label" links and no "verified" flag.
//   - v2: the current shape.
//
// Missing fields take their defaults. Unknown connection values reset to
// not_started. Input that is not a JSON object, or a version newer than
// SchemaVersion, yields ErrMalformedDraft.
func DecodeDraft(raw []byte) (Draft, error) {
	if !gjson.ValidBytes(raw) {
		return Draft{}, fmt.Errorf("%w: invalid json", ErrMalformedDraft)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Draft{}, fmt.Errorf("%w: expected object", ErrMalformedDraft)
	}
	if st := root.Get("state"); st.IsObject() {
		root = st
	}

	if v := root.Get("version"); v.Exists() && v.Int() > SchemaVersion {
		return Draft{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedDraft, v.Int())
	}

	d := NewDraft()

	status := ConnectionStatus(firstString(root, "connection", "gmail"))
	if status.IsValid() {
		d.Connection = status
	}

	p := root.Get("profile")
	d.Profile.Name = p.Get("name").String()
	d.Profile.Headline = p.Get("headline").String()
	d.Profile.Bio = p.Get("bio").String()
	d.Profile.Location = p.Get("location").String()
	for _, s := range p.Get("specialties").Array() {
		if s.Type == gjson.String {
			d.Profile.Specialties = append(d.Profile.Specialties, s.String())
		}
	}

	for _, s := range root.Get("socials").Array() {
		if !s.IsObject() {
			continue
		}
		d.Socials = append(d.Socials, SocialLink{
			ID:       s.Get("id").String(),
			Platform: s.Get("platform").String(),
			Username: s.Get("username").String(),
			URL:      s.Get("url").String(),
			Verified: s.Get("verified").Bool(),
		})
	}

	for _, l := range root.Get("links").Array() {
		if !l.IsObject() {
			continue
		}
		d.Links = append(d.Links, CustomLink{
			ID:    l.Get("id").String(),
			Label: firstString(l, "label", "name"),
			URL:   l.Get("url").String(),
		})
	}

	d.Completed = root.Get("completed").Bool()
	if ts := root.Get("updated_at"); ts.Exists() {
		if t, err := time.Parse(time.RFC3339Nano, ts.String()); err == nil {
			d.UpdatedAt = t
		}
	}
	return d, nil
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}
