package asset

// DefaultDeck is the built-in YAML deck used when no deck file is given
const DefaultDeck = `
name: starter

exercises:

# === Stage 1: sorting ===

- stage: 1
  order: 1
  variant: sort
  title: Animals or food?
  categories:
    - { id: animals, label: Animals }
    - { id: food, label: Food }
  items:
    - { id: cat, word: cat, category: animals }
    - { id: dog, word: dog, category: animals }
    - { id: apple, word: apple, category: food }
    - { id: bread, word: bread, category: food }

- stage: 1
  order: 2
  variant: sort
  title: Colors, shapes, numbers
  categories:
    - { id: colors, label: Colors, expected: 2 }
    - { id: shapes, label: Shapes, expected: 2 }
    - { id: numbers, label: Numbers, expected: 2 }
  items:
    - { id: red, word: red, category: colors }
    - { id: blue, word: blue, category: colors }
    - { id: circle, word: circle, category: shapes }
    - { id: square, word: square, category: shapes }
    - { id: two, word: two, category: numbers }
    - { id: seven, word: seven, category: numbers }

# === Stage 2: picture puzzle ===

- stage: 2
  order: 1
  variant: puzzle
  title: Sunny day
  items:
    - { id: sky-left, word: "\\~~", slot: 0 }
    - { id: sky-right, word: "~(O)", slot: 1 }
    - { id: grass-left, word: "/\\/\\", slot: 2 }
    - { id: grass-right, word: "|__|", slot: 3 }
`
