// Package grammar turns the argument text of a command into a typed request.
//
// The grammar never consults a store. It checks syntax (delimiters, numbers,
// tokens) and field ranges that do not depend on state, such as age and
// rating bounds. Anything that needs the hotel's current contents belongs to
// the validate package.
//
// Argument families:
//   - delimiter-split: NAME / VALUE, DESCRIPTION !! DATE
//   - tagged fields:   /Name: NAME /New Pax: N
//   - numeric:         a single signed integer
//   - category:        one of the room category tokens
//   - free text:       any non-empty text
//   - zero-argument:   nothing after the keyword
package grammar
