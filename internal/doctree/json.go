package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire format. Every node carries "text" and "subtopics"; "hindi_text"
// and "guj_text" appear together once the translation stage has run;
// "<lang>_speech_file_id" appears per synthesized language, with
// "<lang>_speech_url" next to it once resolved. Key order is canonical
// and map entries keep document order.

func speechIDKey(lang Language) string  { return string(lang) + "_speech_file_id" }
func speechURLKey(lang Language) string { return string(lang) + "_speech_url" }

func speechIDLang(key string) (Language, bool) {
	for _, lang := range Languages {
		if key == speechIDKey(lang) {
			return lang, true
		}
	}
	return "", false
}

func speechURLLang(key string) (Language, bool) {
	for _, lang := range Languages {
		if key == speechURLKey(lang) {
			return lang, true
		}
	}
	return "", false
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil || t.Topics == nil {
		return []byte("{}"), nil
	}
	return t.Topics.MarshalJSON()
}

func (t *Tree) UnmarshalJSON(data []byte) error {
	m := NewNodeMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	t.Topics = m
	return nil
}

func (m *NodeMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendString(&buf, name)
		buf.WriteByte(':')
		b, err := m.nodes[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *NodeMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return m.decode(dec)
}

func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteString(`{"text":`)
	appendString(&buf, n.Text)
	if n.Translations != nil {
		buf.WriteString(`,"hindi_text":`)
		appendString(&buf, n.Translations.Hindi)
		buf.WriteString(`,"guj_text":`)
		appendString(&buf, n.Translations.Gujarati)
	}
	for _, lang := range Languages {
		ref := n.Speech[lang]
		if ref == nil {
			continue
		}
		buf.WriteByte(',')
		appendString(&buf, speechIDKey(lang))
		buf.WriteByte(':')
		appendString(&buf, ref.FileID)
		if ref.URL != "" {
			buf.WriteByte(',')
			appendString(&buf, speechURLKey(lang))
			buf.WriteByte(':')
			appendString(&buf, ref.URL)
		}
	}
	buf.WriteString(`,"subtopics":`)
	sub, err := n.Subtopics.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(sub)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return n.decode(dec)
}

func (m *NodeMap) decode(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // JSON null
		if m.nodes == nil {
			m.nodes = make(map[string]*Node)
		}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("doctree: expected object, got %v", tok)
	}
	if m.nodes == nil {
		m.nodes = make(map[string]*Node)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("doctree: expected object key, got %v", keyTok)
		}
		n := NewNode()
		if err := n.decode(dec); err != nil {
			return err
		}
		m.Set(name, n)
	}
	_, err = dec.Token()
	return err
}

func (n *Node) decode(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("doctree: expected node object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("doctree: expected node key, got %v", keyTok)
		}
		switch key {
		case "text":
			if err := dec.Decode(&n.Text); err != nil {
				return err
			}
		case "hindi_text":
			var s string
			if err := dec.Decode(&s); err != nil {
				return err
			}
			n.translations().Hindi = s
		case "guj_text":
			var s string
			if err := dec.Decode(&s); err != nil {
				return err
			}
			n.translations().Gujarati = s
		case "subtopics":
			n.Subtopics = NewNodeMap()
			if err := n.Subtopics.decode(dec); err != nil {
				return err
			}
		default:
			if lang, ok := speechIDLang(key); ok {
				var s string
				if err := dec.Decode(&s); err != nil {
					return err
				}
				n.speechRef(lang).FileID = s
				break
			}
			if lang, ok := speechURLLang(key); ok {
				var s string
				if err := dec.Decode(&s); err != nil {
					return err
				}
				n.speechRef(lang).URL = s
				break
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token()
	return err
}

func (n *Node) translations() *Translations {
	if n.Translations == nil {
		n.Translations = &Translations{}
	}
	return n.Translations
}

func (n *Node) speechRef(lang Language) *SpeechRef {
	if n.Speech == nil {
		n.Speech = make(map[Language]*SpeechRef)
	}
	ref, ok := n.Speech[lang]
	if !ok {
		ref = &SpeechRef{}
		n.Speech[lang] = ref
	}
	return ref
}

func appendString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
