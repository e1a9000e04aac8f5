package storefront

const imageFields = `
    id
    url
    altText
    width
    height
`

const productCardFragment = `
  fragment ProductCard on Product {
    id
    title
    handle
    vendor
    description
    availableForSale
    productType
    priceRange { minVariantPrice { amount currencyCode } }
    compareAtPriceRange { minVariantPrice { amount currencyCode } }
    images(first: 2) { nodes {` + imageFields + `} }
    featuredImage {` + imageFields + `}
  }
`

const collectionQuery = productCardFragment + `
  query Collection(
    $handle: String!
    $first: Int
    $last: Int
    $startCursor: String
    $endCursor: String
    $sortKey: ProductCollectionSortKeys
    $reverse: Boolean
    $filters: [ProductFilter!]
  ) {
    collection(handle: $handle) {
      id
      handle
      title
      description
      seo { title description }
      image {` + imageFields + `}
      products(
        first: $first
        last: $last
        before: $startCursor
        after: $endCursor
        sortKey: $sortKey
        reverse: $reverse
        filters: $filters
      ) {
        nodes { ...ProductCard }
        pageInfo { hasPreviousPage hasNextPage startCursor endCursor }
      }
    }
  }
`

const productQuery = `
  query Product($handle: String!) {
    product(handle: $handle) {
      id
      title
      handle
      vendor
      productType
      description
      descriptionHtml
      availableForSale
      seo { title description }
      priceRange { minVariantPrice { amount currencyCode } }
      compareAtPriceRange { minVariantPrice { amount currencyCode } }
      images(first: 10) { nodes {` + imageFields + `} }
      featuredImage {` + imageFields + `}
      options { name values }
      firstAvailable: selectedOrFirstAvailableVariant(selectedOptions: []) { id }
      variants(first: 100) {
        nodes {
          id
          title
          availableForSale
          selectedOptions { name value }
          price { amount currencyCode }
          compareAtPrice { amount currencyCode }
          image {` + imageFields + `}
        }
      }
      metafields(identifiers: [
        {namespace: "custom", key: "specifications"},
        {namespace: "custom", key: "features"}
      ]) {
        namespace
        key
        value
      }
    }
  }
`

const recommendationsQuery = productCardFragment + `
  query ProductRecommendations($productHandle: String!) {
    productRecommendations(productHandle: $productHandle) { ...ProductCard }
  }
`

const featuredCollectionsQuery = `
  query FeaturedCollections($first: Int!) {
    collections(first: $first, sortKey: UPDATED_AT) {
      nodes {
        id
        title
        handle
        description
        image {` + imageFields + `}
      }
    }
  }
`

const featuredProductsQuery = productCardFragment + `
  query FeaturedProducts($first: Int!) {
    products(first: $first, sortKey: BEST_SELLING) {
      nodes { ...ProductCard }
    }
  }
`
